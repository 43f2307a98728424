package contract

// baseText is the membership agreement. Slots in braces are filled by Compose.
// The comparison table under 2.1 is kept as ASCII so the on-screen preview
// stays readable; the PDF layout replaces it with a drawn table.
const baseText = `
CONTRATO DE ADESAO
CLUBE + ESTETICA 3.0

Pelo presente instrumento particular, as partes abaixo qualificadas celebram este contrato de prestacao de servicos:

CONTRATADA: {company_name}, NIF {company_tax_id}, com sede em {company_address}, doravante denominada apenas CONTRATADA.

CONTRATANTE:
Nome: {name}
NIF: {tax_id}
E-mail: {email}
WhatsApp: {whatsapp}
Endereco: {address}

Doravante denominado(a) CONTRATANTE.


CLAUSULA 1ª - DO OBJETO

O Clube + Estetica 3.0 consiste em um programa de acompanhamento estetico mensal continuado. O tratamento fundamenta-se em protocolos personalizados, definidos e ajustados pela equipe tecnica da CONTRATADA segundo a avaliacao profissional e necessidades individuais de cada fase do(a) CONTRATANTE.

Nota importante: Este programa nao se caracteriza como um "pacote fechado" de procedimentos fixos, mas sim como uma assinatura de acompanhamento estetico recorrente.


CLAUSULA 2ª - DOS PLANOS E INVESTIMENTOS

O Clube opera sob o modelo de assinatura, garantindo valores preferenciais em relacao a tabela de servicos avulsos (preco medio de referencia: {reference_price} EUR/sessao).

2.1. Quadro Comparativo de Beneficios

{comparison_table}


2.2. Modalidades de Fidelizacao

{plan_selection}


CLAUSULA 3ª - CONDICOES GERAIS DE UTILIZACAO

Duracao: Cada sessao tera a duracao maxima de 60 minutos.

Protocolos: A definicao tecnica do tratamento e de exclusiva responsabilidade da profissional.

Agendamento e Cancelamento: Cancelamentos ou alteracoes devem ser comunicados com 48h de antecedencia. A ausencia ou aviso tardio implicara na perda da sessao (considerada realizada).

Intransferibilidade: O plano e pessoal e nao podera ser utilizado por terceiros.

Nao Cumulatividade: As sessoes devem ser usufruidas dentro do mes de vigencia. Sessoes nao utilizadas nao acumulam para o mes seguinte.

Reagendamento:
{reschedule_terms}


CLAUSULA 4ª - BENEFICIOS EXCLUSIVOS

Alem das sessoes fixas, o membro tera direito a:

- Desconto em Servicos Extras: {extras_discount}
{premium_benefit}
- Descontos em parceiros.


CLAUSULA 5ª - ROL DE PROCEDIMENTOS DISPONIVEIS

O acompanhamento podera abranger, conforme avaliacao tecnica, os seguintes procedimentos:

Segmento Facial:
- Dermaplaning
- Protocolo Fios de Seda
- Peeling de Vitamina C
- Revitalizacao Face/Pescoco/Colo
- Tratamento Antiacne
- Spa dos Labios / HidraGloss
- Radiofrequencia & Lipo LED

Segmento Corporal:
- Drenagens (Inf. / Abdominal / Total)
- FAT Redux
- Radiofrequencia & Cavitacao
- Lipo LED & Eletroestimulacao
- Protocolos Especificos (Bumbum Up / Dreno Slim)
- Terapias (Termo / Crio / Gesso / Endermo)
- Tratamentos para Estrias e Lipedema

Paragrafo Unico: Procedimentos que utilizem insumos importados (Brasil) estao sujeitos a disponibilidade de estoque, podendo ser substituidos por equivalentes de qualidade similar.


CLAUSULA 6ª - DO PAGAMENTO

Vencimento: Ate o dia 10 de cada mes.

Metodos: Transferencia Bancaria ou Especie.

O atraso no pagamento podera suspender a prestacao dos servicos ate a regularizacao.


CLAUSULA 7ª - RESCISAO E MULTA

A rescisao devera ser solicitada com aviso previo minimo de 60 dias, por escrito ou e-mail.

Caso o(a) CONTRATANTE rescinda o contrato antes de findo o periodo de fidelidade escolhido ({fidelity_months} meses), sera aplicada uma multa compensatoria de 40% sobre o valor total das mensalidades vincendas ate o termino do contrato.


CLAUSULA 8ª - VALIDADE JURIDICA

Este contrato e validado mediante assinatura digital, confirmacao por e-mail ou aceitacao eletronica.


CLAUSULA 9ª - PROTECAO DE DADOS (RGPD)

O(A) CONTRATANTE autoriza o tratamento dos seus dados pessoais para fins de gestao contratual e agendamentos. A utilizacao de imagens para fins publicitarios sera objeto de consentimento especifico e separado.


CLAUSULA 10ª - RESPONSABILIDADE TECNICA

O(A) CONTRATANTE obriga-se a informar sobre quaisquer condicoes de saude, alergias, uso de medicacao ou estado de gravidez. A CONTRATADA nao se responsabiliza por reacoes decorrentes da omissao de tais informacoes.


CLAUSULA 11ª - TOLERANCIA DE ATRASO

Sera admitida uma tolerancia de atraso de 10 minutos. Apos este periodo, a sessao sera realizada pelo tempo restante disponivel, sem direito a compensacao ou desconto, de forma a nao comprometer os agendamentos seguintes.


{city}, {date}

CONTRATO Nº: {number}


__________________________________
{business_signatory}


__________________________________
Contratante (Assinatura Digital)
`
