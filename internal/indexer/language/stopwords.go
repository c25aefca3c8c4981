package language

const englishStopWords = `
a and are as at be but by for if in into is it near no not of on or such that
the their then there these they this to was will with
`

const danishStopWords = `
ad af alle alt anden at blev blive bliver da de dem den denne der deres det
dette dig din disse dog du efter eller en end er et for fra ham han hans har
havde have hende hendes her hos hun hvad hvis hvor i ikke ind jeg jer jo kunne
man mange med meget men mig min mine mit mod ned noget nogle nu når og også om
op os over på selv sig sin sine sit skal skulle som sådan thi til ud under var
vi vil ville vor være været
`

const germanStopWords = `
aber alle allem allen aller alles als also am an ander andere anderem anderen
anderer anderes anderm andern anderr anders auch auf aus bei bin bis bist da
damit dann der den des dem die das dass daß derselbe derselben denselben
desselben demselben dieselbe dieselben dasselbe dazu dein deine deinem deinen
deiner deines denn derer dessen dich dir du dies diese diesem diesen dieser
dieses doch dort durch ein eine einem einen einer eines einig einige einigem
einigen einiger einiges einmal er ihn ihm es etwas euer eure eurem euren eurer
eures für gegen gewesen hab habe haben hat hatte hatten hier hin hinter ich
mich mir ihr ihre ihrem ihren ihrer ihres euch im in indem ins ist jede jedem
jeden jeder jedes jene jenem jenen jener jenes jetzt kann kein keine keinem
keinen keiner keines können könnte machen man manche manchem manchen mancher
manches mein meine meinem meinen meiner meines mit muss musste nach nicht
nichts noch nun nur ob oder ohne sehr sein seine seinem seinen seiner seines
selbst sich sie ihnen sind so solche solchem solchen solcher solches soll
sollte sondern sonst über um und uns unse unsem unsen unser unses unter viel
vom von vor während war waren warst was weg weil weiter welche welchem welchen
welcher welches wenn werde werden wie wieder will wir wird wirst wo wollen
wollte würde würden zu zum zur zwar zwischen
`

const spanishStopWords = `
a al algo algunas algunos ante antes como con contra cual cuando de del desde
donde durante e el ella ellas ellos en entre era erais eran eras eres es esa
esas ese eso esos esta estaba estado estas este esto estos fue fueron ha han
hasta hay la las le les lo los mas me mi mis mucho muy más mí nada ni no nos
nosotros o os otra otros para pero poco por porque que quien quienes qué se
sea ser si sido sin sobre su sus también te tiene tienen todo todos tu tus un
una uno unos vosotros y ya yo él
`

const finnishStopWords = `
ei eivät emme en et ette että he heidän heille heillä heiltä heissä heistä
heitä hän häneen hänelle hänellä häneltä hänen hänessä hänestä hänet häntä
itse ja johon joiden joihin joiksi joilla joille joilta joina joissa joista
joita joka joksi jolla jolle jolta jona jonka jos jossa josta jota jotka kanssa
keiden keihin keiksi keille keillä keiltä keinä keissä keistä keitä keneen
keneksi kenelle kenellä keneltä kenen kenenä kenessä kenestä kenet ketkä ketä
koska kuin kuka kun me meidän meille meillä meiltä meissä meistä meitä mihin
mikä miksi mille millä miltä minkä minua minulla minulle minulta minun minussa
minusta minut minuun minä missä mistä mitkä mitä mukaan mutta ne niiden niihin
niiksi niille niillä niiltä niin niinä niissä niistä niitä noiden noihin
noiksi noilla noille noilta noin noina noissa noista noita nuo nyt näiden
näihin näiksi näille näillä näiltä näinä näissä näistä näitä nämä ole olemme
olen olet olette oli olimme olin olisi olisimme olisin olisit olisitte olisivat
olit olitte olivat olla olleet ollut on ovat poikki se sekä sen siihen siinä
siitä siksi sille sillä sillä siltä sinua sinulla sinulle sinulta sinun
sinussa sinusta sinut sinuun sinä sitä tai te teidän teille teillä teiltä
teissä teistä teitä tuo tuohon tuoksi tuolla tuolle tuolta tuon tuona tuossa
tuosta tuota tähän täksi tälle tällä tältä tämä tämän tänä tässä tästä tätä
vaan vai vaikka yli
`

const frenchStopWords = `
ai aie aient aies ait as au aura aurai auraient aurais aurait auras aurez
auriez aurions aurons auront aux avaient avais avait avec avez aviez avions
avons ayant ayez ayons c ce ceci cela celà ces cet cette d dans de des du elle
en es est et étaient étais était étant été êtes étiez étions être eu eue eues
eûmes eurent eus eusse eussent eusses eussiez eussions eut eût eûtes eux fûmes
furent fus fusse fussent fusses fussiez fussions fut fût fûtes ici il ils j je
l la le les leur leurs lui m ma mais me même mes moi mon n ne nos notre nous on
ont ou par pas pour qu que quel quelle quelles quels qui s sa sans se sera
serai seraient serais serait seras serez seriez serions serons seront ses soi
soient sois soit sommes son sont soyez soyons suis sur t ta te tes toi ton tu
un une vos votre vous y
`

const hungarianStopWords = `
a ahogy ahol aki akik akkor alatt amely amelyek amelyekben amelyeket amelyet
amelynek ami amikor amit amolyan amíg annak arra arról az azok azon azonban azt
aztán azután azzal azért be belül benne bár cikk cikkek cikkeket csak de e ebben
eddig egy egyes egyetlen egyik egyre egyéb egész ehhez ekkor el ellen első elég
elő először előtt emilyen ennek erre ez ezek ezen ezt ezzel ezért fel felé hanem
hiszen hogy hogyan igen ill ill. illetve ilyen ilyenkor ismét ison itt jobban
jó jól kell kellett keressünk keresztül ki kívül között közül legalább legyen
lehet lehetett lenne lenni lesz lett maga magát majd már más másik meg mellett
mely melyek mert mi mikor milyen minden mindenki mindent mindig mint mintha mit
mivel miért most nagy nagyobb nagyon ne nekem neki nem nincs néha néhány nélkül
olyan ott pedig persze rá s saját sem semmi sok sokat sokkal szemben szerint
szinte számára talán tehát teljes tovább továbbá több ugyanis utolsó után
utána vagy vagyis vagyok valaki valami valamint való van vannak vele vissza
viszont volna volt voltak voltam voltunk által általában át én éppen és így
õ õk õket össze úgy új újabb újra
`

const italianStopWords = `
a abbia ad agli ai al all alla alle allo anche avere aveva c che chi ci coi col
come con contro cui da dagli dai dal dall dalla dalle dallo degli dei del dell
della delle dello di dov dove e ebbe egli ed era erano essere fa gli ha hanno
ho i il in io la le lei li lo loro lui ma mi mia mie miei mio ne negli nei nel
nell nella nelle nello noi non nostro o per perché più quale quanta quante
quanti quanto quella quelle quelli quello questa queste questi questo sarà se
sei si sia siamo siete sono sta stata stato su sua sue sugli sui sul sull
sulla sulle sullo suo suoi ti tra tu tua tue tuo tuoi tutti tutto un una uno
vi voi è
`

const dutchStopWords = `
aan al alles als altijd andere ben bij daar dan dat de der deze die dit doch
doen door dus een eens en er ge geen geweest haar had heb hebben heeft hem het
hier hij hoe hun iemand iets ik in is ja je kan kon kunnen maar me meer men met
mij mijn moet na naar niet niets nog nu of om omdat onder ons ook op over reeds
te tegen toch toen tot u uit uw van veel voor want waren was wat werd wezen
wie wil worden wordt zal ze zelf zich zij zijn zo zonder zou
`

const norwegianStopWords = `
alle at av bare begge ble blei bli blir blitt både båe da de deg dei deim deira
deires dem den denne der dere deres det dette di din disse ditt du dykk dykkar
då eg ein eit eitt eller elles en enn er et ett etter for fordi fra før ha
hadde han hans har hennar henne hennes her hjå ho hoe honom hoss hossen hun hva
hvem hver hvilke hvilken hvis hvor hvordan hvorfor i ikke ikkje ingen ingi
inkje inn inni ja jeg kan kom korleis korso kun kunne kva kvar kvarhelst kven
kvi kvifor man mange me med medan meg meget mellom men mi min mine mitt mot mykje
ned no noe noen noka noko nokon nokor nokre nå når og også om opp oss over på
samme seg selv si sia sidan siden sin sine sitt sjøl skal skulle slik so som
somme somt så sånn til um upp ut uten var vart varte ved vere verte vi vil
ville vore vors vort vår være vært å
`

const portugueseStopWords = `
a ao aos aquela aquelas aquele aqueles aquilo as até com como da das de dela
delas dele deles depois do dos e ela elas ele eles em entre era eram essa essas
esse esses esta estas este estes eu foi fomos for foram fosse fossem fui há isso
isto já lhe lhes mais mas me mesmo meu meus minha minhas muito na nas nem no nos
nossa nossas nosso nossos num numa não nós o os ou para pela pelas pelo pelos
por qual quando que quem se sem ser seu seus só sua suas também te tem tu tua
tuas têm um uma você vocês vos à às é
`

const russianStopWords = `
а без более бы был была были было быть в вам вас весь во вот все всего всех вы
где да даже для до его ее если есть еще же за здесь и из или им их к как ко
когда кто ли либо мне может мы на надо наш не него нее нет ни них но ну о об
однако он она они оно от очень по под при с со так также такой там те тем то
того тоже той только том ты у уже хотя чего чей чем что чтобы чье чья эта эти
это я
`

const swedishStopWords = `
alla allt att av blev bli blir blivit de dem den denna deras dess dessa det
detta dig din dina ditt du där då efter ej eller en er era ert ett från för
ha hade han hans har henne hennes hon honom hur här i icke ingen inom inte jag
ju kan kunde man med mellan men mig min mina mitt mot mycket ni nu när någon
något några och om oss på samma sedan sig sin sina sitta själv skulle som så
sådan sådana sådant till under upp ut utan vad var vara varför varit varje
vars vart vem vi vid vilka vilkas vilken vilket vår våra vårt än är åt över
`
